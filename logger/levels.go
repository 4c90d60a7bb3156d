package logger

import "github.com/rs/zerolog"

func parseComponentLevels(in map[string]string) map[string]zerolog.Level {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]zerolog.Level, len(in))
	for name, s := range in {
		if lvl, err := zerolog.ParseLevel(s); err == nil {
			out[name] = lvl
		}
	}
	return out
}

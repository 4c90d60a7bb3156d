// Package config loads service configuration with Viper.
//
// A config.yml is searched in the usual locations (./cmd/<service>, ./config,
// the working directory), a matching .env file is loaded with godotenv, and
// environment variables carrying the service prefix override file values:
//
//	TRADUCKXION_SERVER_PORT=9090          -> server.port
//	TRADUCKXION_TRANSCRIPTION_GROUP_SIZE  -> transcription.group_size
//
// When the target struct implements Defaulter or Validator those hooks run
// after unmarshalling.
package config

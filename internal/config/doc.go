// Package config loads producer/consumer run settings from the environment.
//
// Every field has a default matching the original demo: three producers of
// five items each, two consumers, and a five-slot queue. Command-line flags
// in cmd/producer-consumer override whatever is loaded here.
package config

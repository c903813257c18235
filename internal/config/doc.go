// Package config loads the server configuration from the environment.
//
// Values come from a .env file when one exists and then from the process
// environment, parsed with caarlos0/env. Load fails fast: a missing recipient
// or missing provider credentials stop the server before it listens.
package config

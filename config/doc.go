// Package config loads the settings of the cloudchat tools from an optional
// YAML file, a .env file and the process environment, in increasing order of
// precedence.
package config

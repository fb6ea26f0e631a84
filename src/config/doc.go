// Package config defines the configuration of a web-auth server.
//
// Regardless of how the server is started, directly from Go code or through
// the webauth command, it uses the Config object defined in this package to
// store and forward configuration options. On top of these options, it relies
// on a data directory, defined by Config.DataDir, where it expects to find a
// few additional files:
//
//  priv_key // a plain text file containing the S... seed of the server (cf. webauth keygen).
//  key.pub // the G... address matching priv_key.
//  webauth.toml // (optional) configuration file, also .yaml or .json.
package config

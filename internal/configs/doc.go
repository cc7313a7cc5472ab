// Package configs manages the rpass configuration.
//
// Configuration is stored in TOML format at <config dir>/rpass/config.toml
// with two tables:
//
//   - [main]: store layout (identifier folder, index record name, record
//     extension), sync mirror settings, usage history and timeouts
//   - [pass]: the key prefixes recognized inside an entry
//
// Keys absent from the file keep their default value, so a partial file
// is valid. A missing file is equivalent to DefaultConfig().
//
// # Settings
//
// RpassSettings is resolved at startup from the environment: the home
// directory, the config file path, and the password store root
// ($PASSWORD_STORE_DIR or ~/.password-store). Tests replace it.
package configs

// Package utils provides utility packages for common operations.
//
//   - envvar: ${NAME} expansion in configuration values
//   - logging: logrus setup and the AWS SDK log adapter
//   - notify: formatted message display with symbols and colors
//   - runner: external process execution
package utils

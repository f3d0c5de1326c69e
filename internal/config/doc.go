// SPDX-License-Identifier: MPL-2.0

// Package config loads macdev configuration from a CUE file validated
// against an embedded schema, with Viper supplying defaults and the
// struct mapping. A missing config file is not an error; defaults apply.
package config

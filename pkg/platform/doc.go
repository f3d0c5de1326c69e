// SPDX-License-Identifier: MPL-2.0

// Package platform provides host operating system identification.
package platform

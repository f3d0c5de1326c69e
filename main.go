// SPDX-License-Identifier: MPL-2.0

package main

import cmd "macdev-cli/cmd/macdev"

func main() {
	cmd.Execute()
}

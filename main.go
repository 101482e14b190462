// SPDX-License-Identifier: MPL-2.0

package main

import cmd "lumen-tools/cmd/lumentools"

func main() {
	cmd.Execute()
}

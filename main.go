// SPDX-License-Identifier: MPL-2.0

// Command pkgsurface lists the public surface of a JavaScript package.
package main

import cmd "github.com/invowk/pkgsurface/cmd/pkgsurface"

func main() {
	cmd.Execute()
}

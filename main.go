// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/bee2/packloader/cmd/packloader"

func main() {
	cmd.Execute()
}

package main

import "github.com/seo-optimizer/contentscore/cmd"

func main() {
	cmd.Execute()
}

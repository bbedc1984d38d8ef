package main

import "github.com/jsphweid/scorestream/cmd"

func main() {
	cmd.Execute()
}

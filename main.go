package main

import "github.com/jsphweid/airpiano/cmd"

func main() {
	cmd.Execute()
}

package main

import "github.com/jbrusey/llm-council/cmd"

func main() {
	cmd.Execute()
}

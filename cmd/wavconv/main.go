package main

import (
	"speech-kit/cmd/wavconv/cmd"
)

func main() {
	cmd.Execute()
}

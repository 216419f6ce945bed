package main

import "twi-speech/cmd/twispeech/cmd"

func main() {
	cmd.Execute()
}

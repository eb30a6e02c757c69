package main

import "github.com/JonMunkholm/lifecharts/internal/cli"

func main() {
	cli.Execute()
}

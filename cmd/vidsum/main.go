package main

import "github.com/forPelevin/vidsum/internal/cli"

func main() { cli.Main() }

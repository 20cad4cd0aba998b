package main

import "github.com/CE-Thesis-2023/infiniti/cmd"

func main() {
	cmd.Execute()
}

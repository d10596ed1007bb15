/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/dnyali/bactasm/cmd"

func main() {
	cmd.Execute()
}

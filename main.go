/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/yogesh1825/CareerConnect-Job-Portal/cmd"

func main() {
	cmd.Execute()
}

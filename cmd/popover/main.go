// Command popover runs the interactive card transition in a window, in a
// terminal, or headless against a JSON test script.
package main

func main() {
	Execute()
}

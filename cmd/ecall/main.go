// Command ecall inspects and exercises host-function dispatch tables:
// list the syscall surface, generate its reference documentation, or
// drive calls interactively against the demo storage environment.
package main

func main() {
	Execute()
}

// Command logfacade emits log records through the configured backend and manages its configuration.
package main

import "github.com/oshokin/logfacade/cmd/logfacade/cmd"

func main() {
	cmd.Execute()
}

package provider

import "fmt"

func errf(format string, args ...any) error {
	return fmt.Errorf("cria/provider: "+format, args...)
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
)

// bindFlag binds a flag to a viper key; flags override every other source
// once set.
func bindFlag(flag *pflag.Flag, key string) {
	if err := v.BindPFlag(key, flag); err != nil {
		fmt.Fprintf(os.Stderr, "Error binding %s flag: %v\n", flag.Name, err)
		os.Exit(1)
	}
}

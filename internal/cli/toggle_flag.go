package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	toggleFlagTypeName       = "toggle"
	toggleImplicitValue      = "true"
	toggleAcceptedValues     = "true, false, yes, no, on, off, 1, 0"
	errorToggleValueFormat   = "invalid value %q for --%s; accepted values: %s"
	toggleAssignmentTemplate = "--%s=%s"
)

var toggleLiterals = map[string]bool{
	"true":  true,
	"yes":   true,
	"y":     true,
	"on":    true,
	"1":     true,
	"false": false,
	"no":    false,
	"n":     false,
	"off":   false,
	"0":     false,
}

// toggleValue is a boolean flag that also accepts yes/no style literals, so
// "--copy no" and "--tokens=off" read naturally.
type toggleValue struct {
	target *bool
	name   string
}

func (value *toggleValue) Set(input string) error {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		normalized = toggleImplicitValue
	}
	parsed, known := toggleLiterals[normalized]
	if !known {
		return fmt.Errorf(errorToggleValueFormat, input, value.name, toggleAcceptedValues)
	}
	*value.target = parsed
	return nil
}

func (value *toggleValue) String() string {
	if value == nil || value.target == nil {
		return strconv.FormatBool(false)
	}
	return strconv.FormatBool(*value.target)
}

func (value *toggleValue) Type() string {
	return toggleFlagTypeName
}

// registerToggleFlag adds a toggle flag that turns on when given without a value.
func registerToggleFlag(flagSet *pflag.FlagSet, target *bool, name string, usage string) {
	*target = false
	flagSet.Var(&toggleValue{target: target, name: name}, name, usage)
	if registered := flagSet.Lookup(name); registered != nil {
		registered.DefValue = strconv.FormatBool(false)
		registered.NoOptDefVal = toggleImplicitValue
	}
}

// joinToggleArguments rewrites "--flag <literal>" into "--flag=<literal>" for toggle
// flags of command and its children. pflag would otherwise treat the literal as a
// positional argument.
func joinToggleArguments(command *cobra.Command, arguments []string) []string {
	toggleNames := map[string]struct{}{}
	collectToggleNames(command, toggleNames)
	if len(toggleNames) == 0 {
		return arguments
	}
	joined := make([]string, 0, len(arguments))
	for index := 0; index < len(arguments); index++ {
		argument := arguments[index]
		if argument == "--" {
			joined = append(joined, arguments[index:]...)
			break
		}
		flagName, isLongFlag := strings.CutPrefix(argument, "--")
		if isLongFlag && !strings.Contains(flagName, "=") && index+1 < len(arguments) {
			if _, isToggle := toggleNames[flagName]; isToggle {
				next := arguments[index+1]
				if _, isLiteral := toggleLiterals[strings.ToLower(strings.TrimSpace(next))]; isLiteral {
					joined = append(joined, fmt.Sprintf(toggleAssignmentTemplate, flagName, next))
					index++
					continue
				}
			}
		}
		joined = append(joined, argument)
	}
	return joined
}

func collectToggleNames(command *cobra.Command, names map[string]struct{}) {
	if command == nil {
		return
	}
	record := func(flag *pflag.Flag) {
		if flag.Value.Type() == toggleFlagTypeName {
			names[flag.Name] = struct{}{}
		}
	}
	command.PersistentFlags().VisitAll(record)
	command.Flags().VisitAll(record)
	for _, child := range command.Commands() {
		collectToggleNames(child, names)
	}
}

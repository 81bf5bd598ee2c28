package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/temirov/ctxtree/internal/config"
)

const (
	switchFlagTypeName      = "bool"
	depthFlagTypeName       = "depth"
	switchFlagImpliedValue  = "true"
	switchFlagAcceptedWords = "true, false, yes, no, on, off, 1, 0"
	errorSwitchValueFormat  = "invalid value %q for --%s; accepted values: %s"
	longFlagPrefix          = "--"
	shortFlagPrefix         = "-"
	flagValueSeparator      = "="
)

var switchFlagWords = map[string]bool{
	"true":  true,
	"t":     true,
	"1":     true,
	"yes":   true,
	"y":     true,
	"on":    true,
	"false": false,
	"f":     false,
	"0":     false,
	"no":    false,
	"n":     false,
	"off":   false,
}

// parseSwitchWord reports the boolean meaning of a switch value; an empty value means true.
func parseSwitchWord(input string) (bool, bool) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		return true, true
	}
	parsed, known := switchFlagWords[normalized]
	return parsed, known
}

// switchFlagValue is an on/off option such as --showHidden that also reads yes/no/on/off.
// Its type name stays "bool" so viper decodes it like a plain pflag boolean.
type switchFlagValue struct {
	target *bool
	name   string
}

func (value *switchFlagValue) Set(input string) error {
	parsed, known := parseSwitchWord(input)
	if !known {
		return fmt.Errorf(errorSwitchValueFormat, input, value.name, switchFlagAcceptedWords)
	}
	*value.target = parsed
	return nil
}

func (value *switchFlagValue) String() string { return strconv.FormatBool(*value.target) }

func (value *switchFlagValue) Type() string { return switchFlagTypeName }

// depthFlagValue is --maxDepth: a non-negative integer or "unlimited".
type depthFlagValue struct {
	target *int
}

func (value *depthFlagValue) Set(input string) error {
	depth, parseError := config.ParseDepth(input)
	if parseError != nil {
		return parseError
	}
	*value.target = depth
	return nil
}

func (value *depthFlagValue) String() string { return config.FormatDepth(*value.target) }

func (value *depthFlagValue) Type() string { return depthFlagTypeName }

// addSwitchFlag registers a switch; given without a value it turns the option on.
func addSwitchFlag(flagSet *pflag.FlagSet, target *bool, name string, shorthand string, defaultValue bool, usage string) {
	*target = defaultValue
	flag := flagSet.VarPF(&switchFlagValue{target: target, name: name}, name, shorthand, usage)
	flag.NoOptDefVal = switchFlagImpliedValue
}

func addDepthFlag(flagSet *pflag.FlagSet, target *int, name string, shorthand string, defaultValue int, usage string) {
	*target = defaultValue
	flagSet.VarP(&depthFlagValue{target: target}, name, shorthand, usage)
}

// attachSwitchValues joins a switch and a following yes/no word into one
// argument, so "--showHidden no" and "-c off" are not read as a positional root.
func attachSwitchValues(flagSet *pflag.FlagSet, arguments []string) []string {
	attached := make([]string, 0, len(arguments))
	for index := 0; index < len(arguments); index++ {
		argument := arguments[index]
		if argument == longFlagPrefix {
			return append(attached, arguments[index:]...)
		}
		if index+1 < len(arguments) && isSwitchArgument(flagSet, argument) {
			nextArgument := arguments[index+1]
			if _, known := parseSwitchWord(nextArgument); known && nextArgument != "" && !strings.HasPrefix(nextArgument, shortFlagPrefix) {
				attached = append(attached, argument+flagValueSeparator+nextArgument)
				index++
				continue
			}
		}
		attached = append(attached, argument)
	}
	return attached
}

// isSwitchArgument reports whether argument names a switch flag without an inline value.
func isSwitchArgument(flagSet *pflag.FlagSet, argument string) bool {
	if strings.Contains(argument, flagValueSeparator) {
		return false
	}
	var flag *pflag.Flag
	switch {
	case strings.HasPrefix(argument, longFlagPrefix):
		flag = flagSet.Lookup(strings.TrimPrefix(argument, longFlagPrefix))
	case strings.HasPrefix(argument, shortFlagPrefix) && len(argument) == 2:
		flag = flagSet.ShorthandLookup(argument[1:])
	}
	return flag != nil && flag.Value.Type() == switchFlagTypeName
}

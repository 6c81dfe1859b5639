// Package types holds definitions shared by the optparse packages.
// This file contains constants for all translation keys used throughout the library.
package types

// Prefix for all optparse translation keys
const (
	PrefixKey = "optparse"
)

// Key prefixes
const (
	ErrorPrefixKey    = PrefixKey + ".error"
	WarningPrefixKey  = PrefixKey + ".warning"
	HelpPrefixKey     = PrefixKey + ".help"
	RequiresPrefixKey = PrefixKey + ".requires"
)

// Parse errors
const (
	ErrUnknownOptionKey              = ErrorPrefixKey + ".unknown_option"
	ErrMissingParameterKey           = ErrorPrefixKey + ".missing_parameter"
	ErrMismatchedParamCountKey       = ErrorPrefixKey + ".mismatched_param_count"
	ErrDisallowedInlineParameterKey  = ErrorPrefixKey + ".disallowed_inline_parameter"
	ErrMissingInlineParameterKey     = ErrorPrefixKey + ".missing_inline_parameter"
	ErrInvalidClusterOptionKey       = ErrorPrefixKey + ".invalid_cluster_option"
	ErrChoiceConstraintKey           = ErrorPrefixKey + ".choice_constraint"
	ErrRegexConstraintKey            = ErrorPrefixKey + ".regex_constraint"
	ErrLimitConstraintKey            = ErrorPrefixKey + ".limit_constraint"
	ErrRangeConstraintKey            = ErrorPrefixKey + ".range_constraint"
	ErrURLConstraintKey              = ErrorPrefixKey + ".url_constraint"
	ErrMissingRequiredOptionKey      = ErrorPrefixKey + ".missing_required_option"
	ErrUnsatisfiedRequirementKey     = ErrorPrefixKey + ".unsatisfied_requirement"
	ErrUnsatisfiedCondRequirementKey = ErrorPrefixKey + ".unsatisfied_cond_requirement"
)

// Warnings
const (
	WarnDeprecatedOptionKey = WarningPrefixKey + ".deprecated_option"
)

// Requirement connectives
const (
	RequiresAndKey    = RequiresPrefixKey + ".and"
	RequiresOrKey     = RequiresPrefixKey + ".or"
	RequiresNotKey    = RequiresPrefixKey + ".not"
	RequiresNoKey     = RequiresPrefixKey + ".no"
	RequiresCustomKey = RequiresPrefixKey + ".custom"
)

// Help messages
const (
	HelpUsageKey      = HelpPrefixKey + ".usage"
	HelpOptionsKey    = HelpPrefixKey + ".options"
	HelpClusterKey    = HelpPrefixKey + ".cluster"
	HelpParamCountKey = HelpPrefixKey + ".param_count"
	HelpSeparatorKey  = HelpPrefixKey + ".separator"
	HelpPositionalKey = HelpPrefixKey + ".positional"
	HelpInlineKey     = HelpPrefixKey + ".inline"
	HelpAppendKey     = HelpPrefixKey + ".append"
	HelpChoicesKey    = HelpPrefixKey + ".choices"
	HelpRegexKey      = HelpPrefixKey + ".regex"
	HelpUniqueKey     = HelpPrefixKey + ".unique"
	HelpLimitKey      = HelpPrefixKey + ".limit"
	HelpRequiresKey   = HelpPrefixKey + ".requires"
	HelpRequiredKey   = HelpPrefixKey + ".required"
	HelpDefaultKey    = HelpPrefixKey + ".default"
	HelpSourcesKey    = HelpPrefixKey + ".sources"
	HelpStdinKey      = HelpPrefixKey + ".stdin"
	HelpRequiredIfKey = HelpPrefixKey + ".required_if"
	HelpDeprecatedKey = HelpPrefixKey + ".deprecated"
	HelpLinkKey       = HelpPrefixKey + ".link"
	HelpUseCommandKey = HelpPrefixKey + ".use_command"
	HelpUseFilterKey  = HelpPrefixKey + ".use_filter"
	HelpBreakKey      = HelpPrefixKey + ".break"
)

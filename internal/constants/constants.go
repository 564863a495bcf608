package constants

// Tool name and related constants
const (
	// ToolName is the name of this tool
	ToolName = "protoscan"

	// ConfigFileName is the default config file name
	ConfigFileName = "protoscan.yaml"

	// EnvVarPrefix is the prefix for environment variables
	EnvVarPrefix = "PROTOSCAN"

	// ConfigEnvVar names an explicit config file
	ConfigEnvVar = "PROTOSCAN_CONFIG"
)

// Command names
const (
	CommandCheck   = "check"
	CommandConvert = "convert"
	CommandInit    = "init"
	CommandVersion = "version"
)

// Closing remarks printed at the end of a report
const (
	DefaultSuccessRemark = "Good. At least you didn't make it worse."
	DefaultFailureRemark = "This still looks like enterprise Java bullshit."
)

// Exit codes
const (
	ExitSuccess       = 0
	ExitRuleFailure   = 1
	ExitAnalysisError = 2
)

// Closing remark printed after a conversion
const ConvertRemark = "Much better. At least now it doesn't look like enterprise Java architect vomited on your data."

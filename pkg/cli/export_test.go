package cli

// Export unexported functions for testing
var (
	EnvFileFromArgsForTest = envFileFromArgs
	LoadEnvFileForTest     = loadEnvFile
)

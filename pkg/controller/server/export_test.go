package server

// Export unexported functions for testing
var ParseGitHubEventForTest = parseGitHubEvent

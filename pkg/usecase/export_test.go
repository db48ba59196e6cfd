package usecase

// Export unexported functions for testing
var (
	CreateOrUpdateBigQueryTableForTest = createOrUpdateBigQueryTable
	DescribeForTest                    = describe
	ArchivePathForTest                 = archivePath
)

package objectstore

var (
	ClassifyS3Error  = classifyS3Error
	ClassifyGCSError = classifyGCSError
	CopyChunks       = copyChunks
)

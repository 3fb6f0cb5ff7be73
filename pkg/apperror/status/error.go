package status

// ErrorCode is a numeric code to classify API errors in a stable way
type ErrorCode int

// Reserved ranges:
//   0-999:     client errors
//   1000-1999: server and store errors
const (
	BadRequestBase    ErrorCode = 0
	InternalErrorBase ErrorCode = 1000
)

// client/validation errors start at *000
const (
	InvalidRequestBody ErrorCode = BadRequestBase + iota // 0
	MissingParams                                        // 1
	InvalidFileType                                      // 2
	DocumentOpen                                         // 3
	NoExtractableText                                    // 4
	DocumentNotFound                                     // 5
	InvalidChunkStatus                                   // 6
)

// internal errors start at 1000
const (
	Internal         ErrorCode = InternalErrorBase + iota // 1000
	StoreWrite                                            // 1001
	PartialIngestion                                      // 1002
	Configuration                                         // 1003
)

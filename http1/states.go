package http1

type parserState uint8

const (
	eStatusLine parserState = iota + 1
	eHeader
	eBodyFixed
	eBodyIdentity
	eBodyChunked
	eDone
	eError
)

type lineState uint8

const (
	eLineChars lineState = iota + 1
	eLineCR
)

type chunkedState uint8

const (
	eChunkLength chunkedState = iota + 1
	eChunkLengthCR
	eChunkBody
	eChunkBodyEnd
	eChunkBodyCR
	eFinalCR
	eFinalCRLF
)

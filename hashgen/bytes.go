package hashgen

import "encoding/binary"

func readI32BE(b []byte) int32 { return int32(binary.BigEndian.Uint32(b)) }

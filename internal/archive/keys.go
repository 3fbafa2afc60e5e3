package archive

import "encoding/binary"

// Keyspace helpers for archived events.
//
// Layout (byte-wise, lexicographically sortable):
// - ar/{resource_gid}/e/{id_be8}

var (
	arPrefix = []byte("ar/")
	entrySeg = []byte("/e/")
)

func appendBE8(dst []byte, v uint64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	return append(dst, b[:]...)
}

// keyEvent builds the archived-event key with a big-endian id so iteration
// order matches append order.
func keyEvent(resourceGid string, id uint64) []byte {
	k := make([]byte, 0, len(resourceGid)+16)
	k = append(k, arPrefix...)
	k = append(k, resourceGid...)
	k = append(k, entrySeg...)
	k = appendBE8(k, id)
	return k
}

// keyBounds returns the [low, high) iterator bounds covering every archived
// event for a resource.
func keyBounds(resourceGid string) (low, hi []byte) {
	low = keyEvent(resourceGid, 0)
	hi = keyEvent(resourceGid, ^uint64(0))
	return low, append(hi, 0x00)
}

// idFromKey extracts the event id from an archived-event key.
func idFromKey(key []byte) uint64 {
	if len(key) < 8 {
		return 0
	}
	return binary.BigEndian.Uint64(key[len(key)-8:])
}

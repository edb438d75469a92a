package model

//go:generate go run github.com/dmarkham/enumer -type Level -trimprefix Level -transform lower -json -sql -output level.gen.go

// Level is an access level in the permission matrix. Levels are totally
// ordered: none < read < write. A grant at LevelNone is never stored; it is
// the sparse-matrix default.
type Level int

const (
	LevelNone Level = iota
	LevelRead
	LevelWrite
)

// Next returns the level that follows in the cyclic order
// none -> read -> write -> none. This is the single mutation step the
// matrix UI performs on a cell.
func (l Level) Next() Level {
	switch l {
	case LevelNone:
		return LevelRead
	case LevelRead:
		return LevelWrite
	default:
		return LevelNone
	}
}

package ir

import "github.com/shadersim/spirvsim/spirv"

// DecorationEntry is one OpDecorate/OpMemberDecorate record.
type DecorationEntry struct {
	Decoration spirv.Decoration
	Params     []uint32
}

// DecorationIndex answers "what decorations does id (or member of
// structID) carry" without re-scanning the instruction stream, since the
// loader's interface-map construction asks repeatedly (builtin, location,
// binding and descriptor-set lookups).
type DecorationIndex struct {
	byID     map[uint32][]DecorationEntry
	byMember map[memberKey][]DecorationEntry
}

type memberKey struct {
	structID uint32
	member   uint32
}

// NewDecorationIndex creates an empty decoration index.
func NewDecorationIndex() *DecorationIndex {
	return &DecorationIndex{
		byID:     make(map[uint32][]DecorationEntry),
		byMember: make(map[memberKey][]DecorationEntry),
	}
}

// AddDecorate records an OpDecorate.
func (d *DecorationIndex) AddDecorate(id uint32, decoration spirv.Decoration, params []uint32) {
	d.byID[id] = append(d.byID[id], DecorationEntry{Decoration: decoration, Params: params})
}

// AddMemberDecorate records an OpMemberDecorate.
func (d *DecorationIndex) AddMemberDecorate(structID, member uint32, decoration spirv.Decoration, params []uint32) {
	key := memberKey{structID: structID, member: member}
	d.byMember[key] = append(d.byMember[key], DecorationEntry{Decoration: decoration, Params: params})
}

// Get returns every decoration recorded for id.
func (d *DecorationIndex) Get(id uint32) []DecorationEntry {
	return d.byID[id]
}

// Find returns the first decoration of the given kind on id, if any.
func (d *DecorationIndex) Find(id uint32, decoration spirv.Decoration) (DecorationEntry, bool) {
	for _, entry := range d.byID[id] {
		if entry.Decoration == decoration {
			return entry, true
		}
	}
	return DecorationEntry{}, false
}

// FindMember returns the first decoration of the given kind on a struct
// member, if any.
func (d *DecorationIndex) FindMember(structID, member uint32, decoration spirv.Decoration) (DecorationEntry, bool) {
	for _, entry := range d.byMember[memberKey{structID: structID, member: member}] {
		if entry.Decoration == decoration {
			return entry, true
		}
	}
	return DecorationEntry{}, false
}

package ast

// Arena indices. They are 1-based; zero means "absent". A MethodID is the
// node index, not the wire method id assigned by the layout resolver.
type (
	FileID      uint32
	InterfaceID uint32
	MethodID    uint32
	ParamID     uint32
)

const (
	NoFileID      FileID      = 0
	NoInterfaceID InterfaceID = 0
	NoMethodID    MethodID    = 0
	NoParamID     ParamID     = 0
)

func (id FileID) IsValid() bool      { return id != NoFileID }
func (id InterfaceID) IsValid() bool { return id != NoInterfaceID }
func (id MethodID) IsValid() bool    { return id != NoMethodID }
func (id ParamID) IsValid() bool     { return id != NoParamID }

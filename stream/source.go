package stream

// A Source produces the frames a Streamer sends.
type Source interface {
	CalculateFrame() (*Frame, error)
}

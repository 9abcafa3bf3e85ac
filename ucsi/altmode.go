package ucsi

import "github.com/usbctools/typec/bitbuf"

// AlternateMode is one entry of the GET_ALTERNATE_MODES response.
// UCSI Table 6-26.
type AlternateMode struct {
	Svid [2]uint32
	Vdo  [2]uint32
}

// DecodeAlternateMode consumes one GET_ALTERNATE_MODES entry from r.
func DecodeAlternateMode(r *bitbuf.Reader) (AlternateMode, error) {
	var m AlternateMode
	var err error
	if m.Svid[0], err = r.ReadBits(16); err != nil {
		return m, err
	}
	if m.Vdo[0], err = r.ReadBits(32); err != nil {
		return m, err
	}
	if m.Svid[1], err = r.ReadBits(16); err != nil {
		return m, err
	}
	if m.Vdo[1], err = r.ReadBits(32); err != nil {
		return m, err
	}
	return m, nil
}

// CamSupported is the GET_CAM_SUPPORTED response. UCSI Table 6-29.
type CamSupported struct {
	CamSupported bool
}

// DecodeCamSupported consumes a GET_CAM_SUPPORTED response from r.
func DecodeCamSupported(r *bitbuf.Reader) (CamSupported, error) {
	b, err := r.ReadBit()
	return CamSupported{CamSupported: b}, err
}

// CamNotInAltMode is reported in a CurrentCam entry when the connector is
// not operating in an alternate mode.
const CamNotInAltMode = 0xFF

// CurrentCam is the GET_CURRENT_CAM response: offsets into the list of
// alternate modes supported by the PPM, one per active mode.
type CurrentCam struct {
	CurrentAlternateMode []uint32
}

// DecodeCurrentCam consumes up to n GET_CURRENT_CAM offsets from r.
func DecodeCurrentCam(r *bitbuf.Reader, n int) (CurrentCam, error) {
	if n > MaxAltModes {
		n = MaxAltModes
	}
	c := CurrentCam{CurrentAlternateMode: make([]uint32, 0, n)}
	for i := 0; i < n; i++ {
		v, err := r.ReadBits(8)
		if err != nil {
			return c, err
		}
		c.CurrentAlternateMode = append(c.CurrentAlternateMode, v)
	}
	return c, nil
}

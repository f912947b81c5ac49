package constants

// Creative poles a student belongs to.
const (
	PoleGraphisme   = "GRAPHISME"
	PoleAudiovisuel = "AUDIOVISUEL"
	PoleAnimation3D = "ANIMATION_3D"
)

var AllPoles = []string{PoleGraphisme, PoleAudiovisuel, PoleAnimation3D}

func IsValidPole(p string) bool {
	for _, v := range AllPoles {
		if v == p {
			return true
		}
	}
	return false
}

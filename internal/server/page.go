package server

var (
	densityOptions = []int{0, 500, 1000, 2000, 5000, 10000}
	tiltOptions    = []int{0, 15, 30, 45, 60, 75, 90}
)

type pageGlobals struct {
	RelayPath   string
	ScenePath   string
	InitialRain int
}

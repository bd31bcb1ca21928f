package audio

// CPU and resample clock relationship.
const (
	cpuHz          = 4194304
	frameSeqPeriod = 8192 // T-cycles per 512 Hz frame-sequencer tick
	sampleRate     = 44100
	cyclesPerSampl = 95 // ~4194304/44100, close enough per spec

	maxBufferedStereoSamples = sampleRate // 1 second of stereo samples

	waveRAMSize = 16 // 32 4-bit samples packed two per byte
)

// duty table: 8 steps per waveform, 1 = "high".
var dutyTable = [4][8]uint8{
	{0, 0, 0, 0, 0, 0, 0, 1}, // 12.5%
	{1, 0, 0, 0, 0, 0, 0, 1}, // 25%
	{1, 0, 0, 0, 0, 1, 1, 1}, // 50%
	{0, 1, 1, 1, 1, 1, 1, 0}, // 75%
}

// frame sequencer step table: which clocks fire on which of the 8 steps.
var (
	lengthSteps   = [8]bool{true, false, true, false, true, false, true, false}
	sweepSteps    = [8]bool{false, false, true, false, false, false, true, false}
	envelopeSteps = [8]bool{false, false, false, false, false, false, false, true}
)

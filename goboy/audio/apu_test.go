package audio

import "testing"

func powerOn(a *APU) {
	a.WriteRegister(0xFF26, 0x80)
}

func TestTriggerEnablesChannel1(t *testing.T) {
	a := New()
	powerOn(a)

	a.WriteRegister(0xFF12, 0xF0) // volume 15, DAC on
	a.WriteRegister(0xFF14, 0x80) // trigger

	if !a.ch1.enabled {
		t.Fatalf("expected channel 1 enabled after trigger")
	}
	if a.ch1.volume != 15 {
		t.Fatalf("volume = %d, want 15", a.ch1.volume)
	}
}

func TestDACOffDisablesChannel(t *testing.T) {
	a := New()
	powerOn(a)
	a.WriteRegister(0xFF12, 0xF0)
	a.WriteRegister(0xFF14, 0x80)
	a.WriteRegister(0xFF12, 0x00) // DAC off
	if a.ch1.enabled {
		t.Fatalf("expected channel disabled when DAC turned off")
	}
}

func TestLengthCounterDisablesChannel(t *testing.T) {
	a := New()
	powerOn(a)
	a.WriteRegister(0xFF11, 0x3F) // length = 64-63 = 1
	a.WriteRegister(0xFF12, 0xF0)
	a.WriteRegister(0xFF14, 0xC0) // trigger + length enable

	// Drive the frame sequencer through one length clock (step 0, every 8192 cycles).
	a.Step(frameSeqPeriod)

	if a.ch1.enabled {
		t.Fatalf("expected channel disabled after length reaches zero")
	}
}

func TestAudioBufferDrains(t *testing.T) {
	a := New()
	powerOn(a)
	a.WriteRegister(0xFF12, 0xF0)
	a.WriteRegister(0xFF14, 0x80)
	a.WriteRegister(0xFF25, 0xFF) // pan ch1 to both
	a.WriteRegister(0xFF24, 0x77)

	a.Step(cyclesPerSampl * 10)

	buf := a.AudioBuffer()
	if len(buf) == 0 {
		t.Fatalf("expected samples in buffer")
	}
	if len(a.AudioBuffer()) != 0 {
		t.Fatalf("expected buffer drained after AudioBuffer()")
	}
}

func TestPowerOffClearsChannels(t *testing.T) {
	a := New()
	powerOn(a)
	a.WriteRegister(0xFF12, 0xF0)
	a.WriteRegister(0xFF14, 0x80)
	a.WriteRegister(0xFF26, 0x00) // power off

	if a.ch1.enabled {
		t.Fatalf("expected channels cleared on power off")
	}
	if a.ReadRegister(0xFF26)&0x80 != 0 {
		t.Fatalf("expected NR52 power bit clear")
	}
}

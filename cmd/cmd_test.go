package cmd

import (
	"bytes"
	"strings"
	"testing"

	gomidi "gitlab.com/gomidi/midi/v2"

	"go-linngrid/config"
	"go-linngrid/midi"
	"go-linngrid/surface"
)

func TestApplyFlags(t *testing.T) {
	defer func() { portFlag, synthPortFlag, modeFlag = "", "", "" }()

	portFlag, synthPortFlag, modeFlag = "Linn 2", "IAC", "clips"
	cfg := config.DefaultConfig()
	if err := applyFlags(cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.Controller.Port != "Linn 2" || cfg.SynthOutput.Port != "IAC" || cfg.InitialMode() != surface.ClipLaunch {
		t.Errorf("flags not applied: %+v", cfg)
	}

	modeFlag = "bogus"
	if err := applyFlags(config.DefaultConfig()); err == nil {
		t.Error("bad mode flag should fail validation")
	}
}

func TestBuildSong(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Session.Root = "D"
	cfg.Session.Scale = "dorian"
	cfg.Session.Tempo = 98
	song, err := buildSong(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	root, name, _ := song.Scale()
	if root != 2 || name != "dorian" {
		t.Errorf("scale = %d %s", root, name)
	}
	if song.Tempo() != 98 {
		t.Errorf("tempo = %v", song.Tempo())
	}
	if song.NumScenes() != cfg.Session.Scenes {
		t.Errorf("scenes = %d", song.NumScenes())
	}
}

func TestRestore(t *testing.T) {
	var sent []gomidi.Message
	out := midi.NewOutput(0)
	out.Attach(func(m gomidi.Message) error {
		sent = append(sent, m)
		return nil
	})

	n, err := restore(config.DefaultConfig(), out)
	if err != nil {
		t.Fatal(err)
	}
	if want := 12 + 16*8*3; n != uint64(want) || len(sent) != want {
		t.Fatalf("sent %d (%d counted), want %d", len(sent), n, want)
	}
	want := append(midi.NRPN(0, midi.NRPNRowOffset, midi.FactoryRowOffset), midi.NRPN(0, midi.NRPNOctave, midi.FactoryOctave)...)
	for i := range want {
		if !bytes.Equal(sent[i], want[i]) {
			t.Errorf("msg %d = %v, want %v", i, sent[i], want[i])
		}
	}
	if last := sent[len(sent)-1]; !bytes.Equal(last, gomidi.ControlChange(0, midi.CCColor, uint8(midi.ColorOff))) {
		t.Errorf("last message %v is not a colour-off write", last)
	}
}

func TestPortTag(t *testing.T) {
	tests := []struct {
		name, controller, synth, want string
	}{
		{"LinnStrument MIDI", "linnstrument", "iac", "  <- controller"},
		{"IAC Driver Bus 1", "linnstrument", "iac", "  <- synth"},
		{"Other", "linnstrument", "iac", ""},
		{"IAC Driver Bus 1", "linnstrument", "", ""},
	}
	for _, tt := range tests {
		if got := portTag(tt.name, tt.controller, tt.synth); got != tt.want {
			t.Errorf("portTag(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestListCommands(t *testing.T) {
	var buf bytes.Buffer
	scalesCmd.SetOut(&buf)
	scalesCmd.Run(scalesCmd, nil)
	if !strings.Contains(buf.String(), "major") || !strings.Contains(buf.String(), "C D E F G A B") {
		t.Errorf("scales output:\n%s", buf.String())
	}

	buf.Reset()
	kitsCmd.SetOut(&buf)
	kitsCmd.Run(kitsCmd, nil)
	if !strings.Contains(buf.String(), "rack") || !strings.Contains(buf.String(), "36 37") {
		t.Errorf("kits output:\n%s", buf.String())
	}
}

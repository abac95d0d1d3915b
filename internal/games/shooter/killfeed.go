package shooter

// KillMessage is one killfeed line.
type KillMessage struct {
	Killer   string
	Victim   string
	Weapon   WeaponType
	Headshot bool
	Timer    float32
	Active   bool
}

// Killfeed keeps the most recent kills, newest first.
type Killfeed struct {
	entries  []KillMessage
	duration float32
}

// NewKillfeed creates a feed of size slots whose entries expire after duration seconds.
func NewKillfeed(size int, duration float32) *Killfeed {
	if size < 1 {
		size = 1
	}
	return &Killfeed{entries: make([]KillMessage, size), duration: duration}
}

// Push shifts older entries down and puts msg at the top; the oldest falls off.
func (k *Killfeed) Push(killer, victim string, weapon WeaponType, headshot bool) {
	copy(k.entries[1:], k.entries[:len(k.entries)-1])
	k.entries[0] = KillMessage{
		Killer:   killer,
		Victim:   victim,
		Weapon:   weapon,
		Headshot: headshot,
		Timer:    k.duration,
		Active:   true,
	}
}

// Update ages entries and retires the expired ones.
func (k *Killfeed) Update(dt float32) {
	for i := range k.entries {
		if !k.entries[i].Active {
			continue
		}
		k.entries[i].Timer -= dt
		if k.entries[i].Timer <= 0 {
			k.entries[i].Active = false
		}
	}
}

// Entries returns the active messages, newest first.
func (k *Killfeed) Entries() []KillMessage {
	out := make([]KillMessage, 0, len(k.entries))
	for _, e := range k.entries {
		if e.Active {
			out = append(out, e)
		}
	}
	return out
}

// Clear removes every message.
func (k *Killfeed) Clear() {
	for i := range k.entries {
		k.entries[i].Active = false
	}
}

package keyword

import (
	"log/slog"
	"sync"
)

// Number of lists and sentences-per-list in the QuickSIN corpus.
const (
	ListCount     = 12
	SentenceCount = 6
)

var builtin = sync.OnceValue(func() Table {
	return Parse(quickSINKeywords, slog.Default())
})

// BuiltinTable returns the answer key parsed from the embedded QuickSIN
// keyword table. The table is built on first use and shared afterwards;
// callers must treat it as read-only.
func BuiltinTable() Table {
	return builtin()
}

// The QuickSIN keyword table: 12 lists of 6 sentences, 5 scored keywords per
// sentence, '/' separating accepted alternative spellings. Transcribed from
// pages 111-112 of https://etda.libraries.psu.edu/files/final_submissions/5788
const quickSINKeywords = `
L 0 S 0  white silk jacket any shoes
L 0 S 1  child crawled into dense grass
L 0 S 2  Footprints show/showed path took beach
L 0 S 3  event near edge fresh air
L 0 S 4  band Steel 3/three inches/in wide
L 0 S 5  weight package seen high scale

L 1 S 0  tear/Tara thin sheet yellow pad
L 1 S 1  cruise Waters Sleek yacht fun
L 1 S 2  streak color down left Edge
L 1 S 3  done before boy/boys see it
L 1 S 4  Crouch before jump miss mark
L 1 S 5  square peg settle round hole

L 2 S 0  pitch straw through door stable
L 2 S 1  sink thing which pile/piled dishes
L 2 S 2  post no bills office wall
L 2 S 3  dimes showered/shower down all sides
L 2 S 4  pick card slip under pack/Pact
L 2 S 5  store jammed before sale start

L 3 S 0  sense smell better than touch
L 3 S 1  picked up dice second roll
L 3 S 2  drop ashes worn/Warren Old rug
L 3 S 3  couch cover Hall drapes blue
L 3 S 4  stems Tall Glasses cracked broke
L 3 S 5  cleats sank/sink deeply soft turf

L 4 S 0  have better than wait Hope
L 4 S 1  screen before fire kept Sparks
L 4 S 2  thick glasses helped/help read print/prints
L 4 S 3  chair looked strong no bottom
L 4 S 4  told wild Tales/tails frighten him
L 4 S 5  force equal would move Earth

L 5 S 0  leaf drifts along slow spin
L 5 S 1  pencil cut sharp both ends
L 5 S 2  down road way grain farmer
L 5 S 3  best method fix place clips
L 5 S 4  if Mumble your speech lost
L 5 S 5  toad Frog hard tell apart

L 6 S 0  kite dipped swayed/suede stayed aloft/loft
L 6 S 1  beatle/beetle drowned hot June/Tunes sun/son
L 6 S 2  theft Pearl pin Kept Secret
L 6 S 3  wide grin earned many friends
L 6 S 4  hurdle pit aid long Pole
L 6 S 5  Peep/keep under tent see Clown

L 7 S 0  sun came light Eastern sky
L 7 S 1  stale smell old beer lingers
L 7 S 2  desk firm on shaky floor
L 7 S 3  list names carved around base
L 7 S 4  news struct/struck out Restless Minds
L 7 S 5  Sand drifts/Drift over sill/sale house

L 8 S 0  take shelter tent keep still
L 8 S 1  Little Tales/tails they tell false
L 8 S 2  press pedal with left foot
L 8 S 3  black trunk fell from Landing/landings
L 8 S 4  cheap clothes flashy/flash don't last
L 8 S 5  night alarm roused/roust deep sleep

L 9 S 0  dots light betray/betrayed black cat
L 9 S 1  put chart mantle Tack down
L 9 S 2  steady drip worse drenching rain
L 9 S 3  flat pack less luggage space
L 9 S 4  gloss/glass top made unfit read
L 9 S 5  Seven Seals stamped great sheets

L10 S 0  marsh freeze when cold enough
L10 S 1  gray mare walked before colt/cold
L10 S 2  bottles hold four/for kinds rum
L10 S 3  wheeled/wheled bike past winding road
L10 S 4  throw used paper cup plate
L10 S 5  wall phone ring loud often

L11 S 0  hinge door creaked old age
L11 S 1  bright lanterns Gay dark lawn
L11 S 2  offered proof  form large chart
L11 S 3  their eyelids droop/drop want sleep
L11 S 4  many ways do these things
L11 S 5  we like see clear weather
`

package phoneme

// tables maps normalized language subtags to their ordered grapheme rules.
// Rules are ordered longest-grapheme-first so that digraphs win over their
// component letters.
var tables = map[string][]rule{
	"fr": frenchRules,
	"el": greekRules,
	"es": spanishRules,
}

// French. Nasal vowels are collapsed to their oral counterparts ("on" is ɔ,
// not ɔ̃) so that alignment positions stay one-symbol-per-sound.
var frenchRules = []rule{
	{"eau", []Phoneme{"o"}},
	{"ain", []Phoneme{"ɛ"}},
	{"ein", []Phoneme{"ɛ"}},
	{"au", []Phoneme{"o"}},
	{"ou", []Phoneme{"u"}},
	{"oi", []Phoneme{"w", "a"}},
	{"on", []Phoneme{"ɔ"}},
	{"an", []Phoneme{"ɑ"}},
	{"en", []Phoneme{"ɑ"}},
	{"in", []Phoneme{"ɛ"}},
	{"un", []Phoneme{"œ"}},
	{"ai", []Phoneme{"ɛ"}},
	{"ei", []Phoneme{"ɛ"}},
	{"eu", []Phoneme{"ø"}},
	{"ch", []Phoneme{"ʃ"}},
	{"gn", []Phoneme{"ɲ"}},
	{"qu", []Phoneme{"k"}},
	{"ph", []Phoneme{"f"}},
	{"ce", []Phoneme{"s", "ə"}},
	{"ci", []Phoneme{"s", "i"}},
	{"ge", []Phoneme{"ʒ", "ə"}},
	{"gi", []Phoneme{"ʒ", "i"}},
	{"a", []Phoneme{"a"}},
	{"à", []Phoneme{"a"}},
	{"â", []Phoneme{"a"}},
	{"b", []Phoneme{"b"}},
	{"c", []Phoneme{"k"}},
	{"ç", []Phoneme{"s"}},
	{"d", []Phoneme{"d"}},
	{"e", []Phoneme{"ə"}},
	{"é", []Phoneme{"e"}},
	{"è", []Phoneme{"ɛ"}},
	{"ê", []Phoneme{"ɛ"}},
	{"f", []Phoneme{"f"}},
	{"g", []Phoneme{"g"}},
	{"h", nil}, // silent
	{"i", []Phoneme{"i"}},
	{"î", []Phoneme{"i"}},
	{"j", []Phoneme{"ʒ"}},
	{"k", []Phoneme{"k"}},
	{"l", []Phoneme{"l"}},
	{"m", []Phoneme{"m"}},
	{"n", []Phoneme{"n"}},
	{"o", []Phoneme{"o"}},
	{"ô", []Phoneme{"o"}},
	{"p", []Phoneme{"p"}},
	{"r", []Phoneme{"ʁ"}},
	{"s", []Phoneme{"s"}},
	{"t", []Phoneme{"t"}},
	{"u", []Phoneme{"y"}},
	{"ù", []Phoneme{"y"}},
	{"û", []Phoneme{"y"}},
	{"v", []Phoneme{"v"}},
	{"w", []Phoneme{"w"}},
	{"x", []Phoneme{"k", "s"}},
	{"y", []Phoneme{"i"}},
	{"z", []Phoneme{"z"}},
}

// Modern Greek, including the voiced-stop digraphs that trip up learners
// (μπ is b, ντ is d).
var greekRules = []rule{
	{"ου", []Phoneme{"u"}},
	{"ού", []Phoneme{"u"}},
	{"αι", []Phoneme{"e"}},
	{"αί", []Phoneme{"e"}},
	{"ει", []Phoneme{"i"}},
	{"εί", []Phoneme{"i"}},
	{"οι", []Phoneme{"i"}},
	{"οί", []Phoneme{"i"}},
	{"υι", []Phoneme{"i"}},
	{"αυ", []Phoneme{"a", "v"}},
	{"ευ", []Phoneme{"e", "v"}},
	{"μπ", []Phoneme{"b"}},
	{"ντ", []Phoneme{"d"}},
	{"γκ", []Phoneme{"g"}},
	{"γγ", []Phoneme{"g"}},
	{"τσ", []Phoneme{"ts"}},
	{"τζ", []Phoneme{"dz"}},
	{"α", []Phoneme{"a"}},
	{"ά", []Phoneme{"a"}},
	{"β", []Phoneme{"v"}},
	{"γ", []Phoneme{"ɣ"}},
	{"δ", []Phoneme{"ð"}},
	{"ε", []Phoneme{"e"}},
	{"έ", []Phoneme{"e"}},
	{"ζ", []Phoneme{"z"}},
	{"η", []Phoneme{"i"}},
	{"ή", []Phoneme{"i"}},
	{"θ", []Phoneme{"θ"}},
	{"ι", []Phoneme{"i"}},
	{"ί", []Phoneme{"i"}},
	{"ϊ", []Phoneme{"i"}},
	{"κ", []Phoneme{"k"}},
	{"λ", []Phoneme{"l"}},
	{"μ", []Phoneme{"m"}},
	{"ν", []Phoneme{"n"}},
	{"ξ", []Phoneme{"k", "s"}},
	{"ο", []Phoneme{"o"}},
	{"ό", []Phoneme{"o"}},
	{"π", []Phoneme{"p"}},
	{"ρ", []Phoneme{"r"}},
	{"σ", []Phoneme{"s"}},
	{"ς", []Phoneme{"s"}},
	{"τ", []Phoneme{"t"}},
	{"υ", []Phoneme{"i"}},
	{"ύ", []Phoneme{"i"}},
	{"ΰ", []Phoneme{"i"}},
	{"φ", []Phoneme{"f"}},
	{"χ", []Phoneme{"x"}},
	{"ψ", []Phoneme{"p", "s"}},
	{"ω", []Phoneme{"o"}},
	{"ώ", []Phoneme{"o"}},
}

// Castilian Spanish.
var spanishRules = []rule{
	{"ch", []Phoneme{"tʃ"}},
	{"ll", []Phoneme{"ʝ"}},
	{"rr", []Phoneme{"r"}},
	{"qu", []Phoneme{"k"}},
	{"gue", []Phoneme{"g", "e"}},
	{"gui", []Phoneme{"g", "i"}},
	{"ge", []Phoneme{"x", "e"}},
	{"gi", []Phoneme{"x", "i"}},
	{"ce", []Phoneme{"θ", "e"}},
	{"ci", []Phoneme{"θ", "i"}},
	{"a", []Phoneme{"a"}},
	{"á", []Phoneme{"a"}},
	{"b", []Phoneme{"b"}},
	{"c", []Phoneme{"k"}},
	{"d", []Phoneme{"d"}},
	{"e", []Phoneme{"e"}},
	{"é", []Phoneme{"e"}},
	{"f", []Phoneme{"f"}},
	{"g", []Phoneme{"g"}},
	{"h", nil}, // silent
	{"i", []Phoneme{"i"}},
	{"í", []Phoneme{"i"}},
	{"j", []Phoneme{"x"}},
	{"k", []Phoneme{"k"}},
	{"l", []Phoneme{"l"}},
	{"m", []Phoneme{"m"}},
	{"n", []Phoneme{"n"}},
	{"ñ", []Phoneme{"ɲ"}},
	{"o", []Phoneme{"o"}},
	{"ó", []Phoneme{"o"}},
	{"p", []Phoneme{"p"}},
	{"r", []Phoneme{"ɾ"}},
	{"s", []Phoneme{"s"}},
	{"t", []Phoneme{"t"}},
	{"u", []Phoneme{"u"}},
	{"ú", []Phoneme{"u"}},
	{"ü", []Phoneme{"u"}},
	{"v", []Phoneme{"b"}},
	{"w", []Phoneme{"w"}},
	{"x", []Phoneme{"k", "s"}},
	{"y", []Phoneme{"ʝ"}},
	{"z", []Phoneme{"θ"}},
}

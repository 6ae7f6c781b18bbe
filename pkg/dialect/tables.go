package dialect

import "github.com/zurustar/emobf/pkg/opcode"

// ClassicAlphabet is the standard ASCII alphabet.
func ClassicAlphabet() *Alphabet {
	return &Alphabet{
		Name: "classic",
		Symbols: [opcode.Count]Symbols{
			opcode.MoveRight:     {Render: ">"},
			opcode.MoveLeft:      {Render: "<"},
			opcode.Increment:     {Render: "+"},
			opcode.Decrement:     {Render: "-"},
			opcode.Output:        {Render: "."},
			opcode.Input:         {Render: ","},
			opcode.JumpIfZero:    {Render: "["},
			opcode.JumpIfNonZero: {Render: "]"},
		},
	}
}

// HandsAlphabet maps every instruction to one hand gesture.
func HandsAlphabet() *Alphabet {
	return &Alphabet{
		Name: "hands",
		Symbols: [opcode.Count]Symbols{
			opcode.MoveRight:     {Render: "👉"},
			opcode.MoveLeft:      {Render: "👈"},
			opcode.Increment:     {Render: "👆"},
			opcode.Decrement:     {Render: "👇"},
			opcode.Output:        {Render: "🤌"},
			opcode.Input:         {Render: "🤏"},
			opcode.JumpIfZero:    {Render: "🤜"},
			opcode.JumpIfNonZero: {Render: "🤛"},
		},
	}
}

// EmojiAlphabet holds the themed families the random encoder draws from.
// Carnivores eat bytes (Input) and herbivores drop them (Output).
// The bare ♀, ♂ and ❤ glyphs are accepted on input but never rendered.
func EmojiAlphabet() *Alphabet {
	return &Alphabet{
		Name: "emoji",
		Symbols: [opcode.Count]Symbols{
			opcode.MoveRight: {
				Family: "happy faces",
				Render: "😀😃😄😁😆😅😂🤣🥲😊😇🙂🙃😉😌😍🥰😘😗😙😚😋😛😝😜🤪",
			},
			opcode.MoveLeft: {
				Family: "sad faces",
				Render: "😞😔😟😕🙁😣😖😫😩🥺😢😭😤😠😡🤬🤯🥵🥶😨😰😥😓🤢🤮🤒🤕",
			},
			opcode.Increment: {
				Family: "hearts",
				Render: "🧡💛💚💙💜🖤🤍🤎💔💕💞💓💗💖💘💝💟🫀",
				Accept: "❤",
			},
			opcode.Decrement: {
				Family: "hats",
				Render: "👑👒🎩🎓🧢⛑🪖",
			},
			opcode.Output: {
				Family: "herbivores",
				Render: "🐭🐹🐰🐼🐨🐮🐷🐽🐵🙈🙉🙊🐒🐦🐗🐴🦄🐛🦋🐌🦕🦓🦍🦧🦣🐘🦛🦏🐪🐫🦒🦘🦬🐃🐂🐄🐎🐖🐏🐑🦙🐐🦌🦜🕊🐇🦥🐁🐀🐿",
			},
			opcode.Input: {
				Family: "carnivores",
				Render: "🐶🐱🦊🐻🐯🦁🐸🐧🦅🦉🐺🕷🦂🐍🦖🐙🦑🐬🐳🐋🦈🐊🐅🐆🐕🐩🦮🦦🦫",
			},
			opcode.JumpIfZero: {
				Family: "women",
				Render: "👧👩👵🧕👸🤶🤰💃",
				Accept: "♀",
			},
			opcode.JumpIfNonZero: {
				Family: "men",
				Render: "👦👨👴👲🕺",
				Accept: "♂",
			},
		},
	}
}

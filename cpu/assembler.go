// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/mos6502/internal"
	"github.com/ezrec/mos6502/memory"
)

// Macro represents a macro definition in the assembly language.
type Macro struct {
	LineNo int      // Line number of the macro definition.
	Args   []string // Arguments for the macro.
	Lines  []string // Lines of macro text to expand.
}

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":       "0",
	"MEMORY_SIZE":  fmt.Sprintf("0x%x", memory.MEMORY_SIZE),
	"ZERO_PAGE":    fmt.Sprintf("0x%x", memory.ARENA_ZERO_PAGE),
	"STACK_PAGE":   fmt.Sprintf("0x%x", memory.ARENA_STACK),
	"RESET_VECTOR": fmt.Sprintf("0x%x", memory.RESET_VECTOR),
}

// Assembler is a single pass macro assembler for the 6502 instruction subset.
type Assembler struct {
	Verbose bool     // If set, verbosely logs the assembler actions.
	Opcode  []Opcode // List of generated opcodes.

	predefine map[string]string   // Predefines
	Label     map[string]int      // Map of jump labels to addresses.
	Equate    map[string]string   // Map of equates.
	Macro     map[string](*Macro) // Map of macros.

	origin int // Address of the next assembled byte.
}

// Predefine defines a new equate or redefines an existing equate,
// applied at the start of each Parse.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// opMap maps mnemonics to operations.
var opMap = map[string]CodeOp{
	"lda": OP_LDA,
	"jsr": OP_JSR,
	"rts": OP_RTS,
	"brk": OP_BRK,
}

var labelRegexp = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// valueOf returns the value of a simple word.
func (asm *Assembler) valueOf(word string) (value uint32, err error) {
	invert := false
	if strings.HasPrefix(word, "~") {
		invert = true
		word = word[1:]
	}
	if len(word) == 0 {
		err = ErrOpcodeValueMissing
		return
	}
	if word[0] == '\'' {
		// Character quotes should have been expanded into
		// values in parseLine()
		err = ErrParseCharacter(strings.Trim(word, "'"))
		return
	}

	var v64 int64
	var u64 uint64
	switch word[0] {
	case '$':
		u64, err = strconv.ParseUint(word[1:], 16, 32)
		v64 = int64(u64)
	case '%':
		u64, err = strconv.ParseUint(word[1:], 2, 32)
		v64 = int64(u64)
	default:
		v64, err = strconv.ParseInt(word, 0, 33)
	}
	if err != nil || v64 > 0xffffffff || v64 < -int64(0x80000000) {
		err = ErrParseNumber(word)
		return
	}

	value = uint32(v64)

	if invert {
		value = ^value
	}

	return
}

// lookup follows the equate chain for a word.
func (asm *Assembler) lookup(word string) string {
	for range 16 {
		equate, ok := asm.Equate[word]
		if !ok || equate == word {
			break
		}
		word = equate
	}

	return word
}

// resolve returns the value of a word, after equate substitution.
func (asm *Assembler) resolve(word string) (value uint32, err error) {
	return asm.valueOf(asm.lookup(word))
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value uint32, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var value32 uint32
		value32, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates. They may be labels
			// or something else.
			continue
		}
		pred[key] = starlark.MakeInt(int(value32))
	}
	err = nil
	// Labels defined so far.
	for key, address := range asm.Label {
		pred[key] = starlark.MakeInt(address)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = uint32(st_int64)
	return
}

// parseLine parses a single line as an opcode.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do 'x' evaluations
	re := regexp.MustCompile(`'\\?[^']'`)
	line = re.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			str = str[1:]
			switch str {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "r":
				str = "\r"
			case "e":
				str = "\033"
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return fmt.Sprintf("%v", str[0])
	})

	// Do $() evaluations
	re = regexp.MustCompile(`\$\([^\$]*\)`)
	line = re.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%#x", value)
	})
	if err != nil {
		return
	}

	words = strings.Fields(line)

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if strings.ToLower(words[0]) == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}
		if !labelRegexp.MatchString(label) {
			err = ErrOperandInvalid
			return
		}

		if asm.Label == nil {
			asm.Label = make(map[string]int, 16)
		}
		asm.Label[label] = asm.origin
		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	// .macro processing
	macro, ok := asm.Macro[words[0]]
	if ok {
		name := words[0]

		args := words[1:]
		if len(args) != len(macro.Args) {
			err = ErrMacroSyntax
			return
		}
		// Turn args into equs
		old_equate := maps.Clone(asm.Equate)
		for n, arg := range macro.Args {
			asm.Equate[arg] = args[n]
		}
		defer func() { asm.Equate = old_equate }()

		// Local labels are unique to each expansion.
		local := fmt.Sprintf("%v_%v_", name, lineno)

		for n, line := range macro.Lines {
			lineno := macro.LineNo + n

			line = strings.ReplaceAll(line, "@", local)
			words, err = asm.parseLine(line, lineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				return
			}

			err = asm.parseWords(words, lineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				return
			}
		}

		words = nil
		return
	}

	return
}

// Parse parses an input stream into a Program containing opcodes.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int
	var macro *Macro

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	clear(asm.Label)
	asm.Opcode = asm.Opcode[:0]
	asm.origin = 0
	if asm.Macro == nil {
		asm.Macro = make(map[string](*Macro))
	}
	clear(asm.Macro)
	asm.Equate = internal.IterSeq2Collect(internal.IterSeq2Concat(maps.All(sysEquate), maps.All(asm.predefine)))

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])
		words := strings.Fields(line)

		// .macro NAME arg...
		if len(words) > 0 && strings.ToLower(words[0]) == ".macro" {
			if macro != nil {
				err = ErrMacroNesting
				return
			}
			if len(words) < 2 {
				err = ErrMacroSyntax
				return
			}
			_, ok := asm.Macro[words[1]]
			if ok {
				err = ErrMacroDuplicate
				return
			}
			macro = &Macro{
				LineNo: lineno + 1,
			}
			if len(words) > 2 {
				macro.Args = words[2:]
			}
			asm.Macro[words[1]] = macro
			continue
		}

		if len(words) > 0 && strings.ToLower(words[0]) == ".endm" {
			if macro == nil {
				err = ErrMacroLonelyEndm
				return
			}
			macro = nil
			continue
		}

		if macro != nil {
			macro.Lines = append(macro.Lines, line)
			continue
		}

		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	if macro != nil {
		err = ErrMacroLonely
		return
	}

	// Final linking of jump labels.
	line = ""
	for n := range asm.Opcode {
		op := &asm.Opcode[n]

		if len(op.LinkLabel) == 0 {
			continue
		}
		lineno = op.LineNo
		line = strings.Join(op.Words, " ")

		label := op.LinkLabel
		address, ok := asm.Label[label]
		if !ok {
			err = ErrLabelMissing(label)
			return
		}
		if len(op.Bytes) != 3 {
			log.Fatalf("Unable to link label '%s' to line %d: %v", label, op.LineNo, op.Words)
		}
		op.Bytes[1] = byte(address & 0xff)
		op.Bytes[2] = byte((address >> 8) & 0xff)
	}

	prog = &Program{
		Opcodes: slices.Clone(asm.Opcode),
	}

	return
}

// listOf splits words into comma separated values.
func listOf(words []string) (values []string) {
	for _, word := range words {
		for _, value := range strings.Split(word, ",") {
			if len(value) > 0 {
				values = append(values, value)
			}
		}
	}

	return
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	var data []byte
	var label string

	// no-op
	if len(words) == 0 {
		return
	}

	initial_words := words

	defer func() {
		if err != nil || len(data) == 0 {
			return
		}
		if asm.origin+len(data) > memory.MEMORY_SIZE {
			err = ErrAddressRange
			return
		}
		opcode := Opcode{LineNo: lineno, Address: asm.origin, Words: initial_words, Bytes: data, LinkLabel: label}
		asm.Opcode = append(asm.Opcode, opcode)
		asm.origin += len(data)
	}()

	directive := strings.ToLower(words[0])
	switch directive {
	case ".org":
		if len(words) != 2 {
			err = ErrOrgSyntax
			return
		}
		var value uint32
		value, err = asm.resolve(words[1])
		if err != nil {
			return
		}
		if value >= memory.MEMORY_SIZE {
			err = ErrAddressRange
			return
		}
		asm.origin = int(value)
	case ".byte", ".word":
		values := listOf(words[1:])
		if len(values) == 0 {
			err = ErrDataSyntax
			return
		}
		for _, word := range values {
			var value uint32
			value, err = asm.resolve(word)
			if err != nil {
				return
			}
			if directive == ".byte" {
				if value > 0xff {
					err = ErrOperandRange
					return
				}
				data = append(data, byte(value))
			} else {
				if value > 0xffff {
					err = ErrOperandRange
					return
				}
				data = append(data, byte(value&0xff), byte(value>>8))
			}
		}
	default:
		data, label, err = asm.parseInstruction(words)
	}

	return
}

// parseInstruction encodes an instruction, returning its bytes and
// any label that must be linked into its operand.
func (asm *Assembler) parseInstruction(words []string) (data []byte, label string, err error) {
	op, ok := opMap[strings.ToLower(words[0])]
	if !ok {
		err = ErrInstructionInvalid
		return
	}

	operand := strings.Join(words[1:], "")

	code, implied := Encode(op, MODE_IMPLIED)
	if implied {
		if len(operand) != 0 {
			err = ErrOpcodeExtraArgs
			return
		}
		data = []byte{byte(code)}
		return
	}

	if len(operand) == 0 {
		err = ErrOpcodeValueMissing
		return
	}

	var mode CodeMode
	var value uint32
	switch {
	case strings.HasPrefix(operand, "#"):
		mode = MODE_IMMEDIATE
		value, err = asm.resolve(operand[1:])
	case strings.HasSuffix(strings.ToLower(operand), ",x"):
		mode = MODE_ZERO_X
		value, err = asm.resolve(operand[:len(operand)-2])
	case op == OP_JSR:
		mode = MODE_ABSOLUTE
		target := asm.lookup(operand)
		value, err = asm.valueOf(target)
		if err != nil && labelRegexp.MatchString(target) {
			label = target
			err = nil
		}
	default:
		mode = MODE_ZERO_PAGE
		value, err = asm.resolve(operand)
	}
	if err != nil {
		return
	}

	code, ok = Encode(op, mode)
	if !ok {
		err = ErrOperandInvalid
		return
	}

	switch mode.Operands() {
	case 1:
		if value > 0xff {
			err = ErrOperandRange
			return
		}
		data = []byte{byte(code), byte(value)}
	case 2:
		if value > 0xffff {
			err = ErrOperandRange
			return
		}
		data = []byte{byte(code), byte(value & 0xff), byte(value >> 8)}
	}

	return
}

/*
 * SCSGraph
 *
 * Copyright 2026 SCSGraph Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package gremlin

import (
	"bytes"
	"fmt"
	"strconv"
	"time"
)

/*
Instruction is a single operation of a traversal with its arguments.
*/
type Instruction struct {
	Operator  string
	Arguments []interface{}
}

/*
Bytecode is the language independent representation of a traversal.
*/
type Bytecode struct {
	SourceInstructions []Instruction
	StepInstructions   []Instruction
}

/*
NewBytecode creates a new empty Bytecode object.
*/
func NewBytecode() *Bytecode {
	return &Bytecode{}
}

/*
AddSource adds a source instruction.
*/
func (bc *Bytecode) AddSource(op string, args ...interface{}) {
	bc.SourceInstructions = append(bc.SourceInstructions, Instruction{op, convertArgs(args)})
}

/*
AddStep adds a step instruction.
*/
func (bc *Bytecode) AddStep(op string, args ...interface{}) {
	bc.StepInstructions = append(bc.StepInstructions, Instruction{op, convertArgs(args)})
}

/*
Copy returns a copy of this bytecode. Instruction arguments are not copied.
*/
func (bc *Bytecode) Copy() *Bytecode {
	ret := &Bytecode{
		make([]Instruction, len(bc.SourceInstructions)),
		make([]Instruction, len(bc.StepInstructions)),
	}

	copy(ret.SourceInstructions, bc.SourceInstructions)
	copy(ret.StepInstructions, bc.StepInstructions)

	return ret
}

/*
String returns a Gremlin like string representation of this bytecode.
*/
func (bc *Bytecode) String() string {
	return bc.prefixString("g")
}

/*
prefixString returns a string representations with a given prefix.
*/
func (bc *Bytecode) prefixString(prefix string) string {
	var buf bytes.Buffer

	buf.WriteString(prefix)

	writeInstructions := func(instructions []Instruction) {
		for _, ins := range instructions {
			buf.WriteString(".")
			buf.WriteString(ins.Operator)
			buf.WriteString("(")

			for i, arg := range ins.Arguments {
				if i > 0 {
					buf.WriteString(",")
				}
				buf.WriteString(argString(arg))
			}

			buf.WriteString(")")
		}
	}

	writeInstructions(bc.SourceInstructions)
	writeInstructions(bc.StepInstructions)

	return buf.String()
}

/*
argString returns the string representation of an instruction argument.
*/
func argString(arg interface{}) string {
	switch v := arg.(type) {
	case string:
		return strconv.Quote(v)
	case *Bytecode:
		return v.prefixString("__")
	case time.Time:
		return fmt.Sprintf("datetime(%v)", strconv.Quote(v.Format(time.RFC3339)))
	case *Predicate:
		return fmt.Sprintf("%v(%v)", v.Operator, argString(v.Value))
	case []interface{}:
		var buf bytes.Buffer
		buf.WriteString("[")
		for i, a := range v {
			if i > 0 {
				buf.WriteString(",")
			}
			buf.WriteString(argString(a))
		}
		buf.WriteString("]")
		return buf.String()
	case T:
		return "T." + string(v)
	case Cardinality:
		return string(v)
	}

	return fmt.Sprint(arg)
}

/*
convertArgs replaces anonymous traversals with their bytecode.
*/
func convertArgs(args []interface{}) []interface{} {
	ret := make([]interface{}, len(args))

	for i, arg := range args {
		if t, ok := arg.(*Traversal); ok {
			arg = t.Bytecode
		}
		ret[i] = arg
	}

	return ret
}

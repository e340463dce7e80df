package main

import "fmt"

// onceString is a string flag that may be given at most once
type onceString struct {
	value string
	set   bool
}

func (o *onceString) String() string {
	return o.value
}

func (o *onceString) Set(v string) error {
	if o.set {
		return fmt.Errorf("may only be given once")
	}
	o.value = v
	o.set = true
	return nil
}

func (o *onceString) Type() string {
	return "string"
}

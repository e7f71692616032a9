//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Compiles the GLSL shaders to SPIR-V.
func (Build) Shaders() error {
	if _, err := executeCmd("glslc", withArgs("assets/shaders/scene.vert", "-o", "assets/shaders/scene.vert.spv"), withStream()); err != nil {
		return err
	}
	if _, err := executeCmd("glslc", withArgs("assets/shaders/scene.frag", "-o", "assets/shaders/scene.frag.spv"), withStream()); err != nil {
		return err
	}
	return nil
}

// Vets the whole module.
func (Build) Vet() error {
	if _, err := executeCmd("go", withArgs("vet", "./..."), withStream()); err != nil {
		return err
	}
	return nil
}

// Runs the test suite.
func (Build) Test() error {
	if _, err := executeCmd("go", withArgs("test", "./..."), withStream()); err != nil {
		return err
	}
	return nil
}

// Package stm32f1 provides the register-level timer instances for
// medium-density STM32F103 parts: the TIM1 through TIM4 blocks and the
// Cortex-M3 SysTick counter. Everything here satisfies the timer package
// Instance contract; the portable state machine supplies the behavior.
//
// The register files build only for the stm32f103 TinyGo target. On
// other targets the package is empty.
package stm32f1

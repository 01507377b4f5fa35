/*
Package preview decides which preview strategy presents a link and keeps at
most one of them on screen.

A Strategy pairs a matching rule with a way of presenting content. The
Manager holds strategies in priority order; Show picks the first match,
hides every other strategy and then shows the match. The host UI renders
the styles returned by RenderStyles and forwards viewport changes through a
Host such as Window.

# Layout

Strategies that know their content's aspect ratio use SizedStyle. The
viewport width selects a scale:

	width >= 1200  0.5
	width >=  992  0.6
	width >=  768  0.7
	width >=  576  0.8
	otherwise      1.0

Landscape content takes scale of the viewport width. Portrait content takes
min(scale*1.4, 1) of the viewport height.

# Errors

Integration bugs, such as showing through a strategy that has no surface,
panic with *ConfigError. Runtime failures while loading content are logged
by the strategy and never returned to the caller.
*/
package preview

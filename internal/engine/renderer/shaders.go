package renderer

const vertexShader = `
#version 410 core

layout (location = 0) in vec3 aPosition;
layout (location = 1) in vec3 aNormal;
layout (location = 2) in vec4 aColor;

uniform mat4 uViewProj;
uniform mat4 uModel;

out vec3 vNormal;
out vec4 vColor;
out vec3 vWorldPos;

void main() {
    vec4 world = uModel * vec4(aPosition, 1.0);
    vWorldPos = world.xyz;
    vNormal = mat3(uModel) * aNormal;
    vColor = aColor;
    gl_Position = uViewProj * world;
}
`

const fragmentShader = `
#version 410 core

in vec3 vNormal;
in vec4 vColor;
in vec3 vWorldPos;

uniform vec4 uTint;
uniform vec3 uLightDir;
uniform float uAmbient;
uniform vec3 uEye;
uniform vec3 uFogColor;
uniform float uFogNear;
uniform float uFogFar;

out vec4 FragColor;

void main() {
    vec3 n = normalize(vNormal);
    float diffuse = abs(dot(n, normalize(-uLightDir)));
    vec4 base = vColor * uTint;
    vec3 lit = base.rgb * (uAmbient + (1.0 - uAmbient) * diffuse);

    float dist = distance(vWorldPos, uEye);
    float fog = clamp((dist - uFogNear) / (uFogFar - uFogNear), 0.0, 1.0);
    FragColor = vec4(mix(lit, uFogColor, fog), base.a);
}
`
